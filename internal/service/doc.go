// Package service contains the application services that sit between the
// HTTP handlers and the stores: reading lifecycle, interpretation
// generation, and user registration.
package service
