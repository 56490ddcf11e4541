// Package errors provides structured error handling for initiative-api.
//
// It provides:
//   - Structured errors with codes, messages, and metadata
//   - HTTP response mapping via Code.HTTPStatus and WriteJSON
//   - Error context preservation through wrapping
//   - Validation error helpers
//   - Type-safe error checking
//
// # Basic Usage
//
// Creating errors:
//
//	err := errors.NotFound("battle not found")
//	err := errors.InvalidArgumentf("invalid initiative: %d", initiative)
//
// Adding metadata:
//
//	err := errors.NotFound("battle not found").
//	    WithMeta("battle_id", battleID)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to get battle")
//	}
//
// # Validation Errors
//
// Using the validation builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("rechargeOn", input.RechargeOn, 2, 6, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer-Specific Guidelines
//
// Repository layer: return domain-specific errors (NotFound, AlreadyExists)
// with relevant IDs in metadata, and wrap storage errors with context.
//
// Orchestrator layer: validate inputs and return InvalidArgument errors,
// check preconditions, and wrap repository errors with business context.
//
// Handler layer: convert errors to HTTP responses with WriteJSON and log
// internal errors for debugging.
package errors
