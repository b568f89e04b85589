// Package errors provides the structured error type shared by the engine,
// repositories and orchestrators.
//
// Engine operations never return these as Go errors to the caller; they are
// folded into result values (Success, Message, Code) so a rejected action is
// a normal outcome. Repositories and orchestrators return them as errors.
//
// Creating errors:
//
//	err := errors.InsufficientResources("Not enough money")
//	err := errors.InvalidTargetf("die %d does not exist", idx)
//
// Wrapping errors:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load run")
//	}
//
// Checking errors:
//
//	if errors.IsNotFound(err) {
//	    // start a new run
//	}
//
// Game rule codes:
//   - InvalidIndex: slot out of bounds or already sold
//   - InsufficientResources: not enough money or no free slot
//   - InvalidTarget: illegal die or face selection
//   - NoEligibleCandidates: nothing left to grant
//   - AlreadyOwned: duplicate of an owned item
package errors
