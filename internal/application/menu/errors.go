package menu

import (
	stderrors "errors"

	"github.com/nutriplan/v1/internal/domain/menu"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/errors"
)

// translate maps domain errors onto the application error taxonomy
func translate(err error) error {
	var (
		appErr  *errors.AppError
		unknown *menu.UnknownItemError
	)
	switch {
	case err == nil:
		return nil
	case stderrors.As(err, &appErr):
		return appErr
	case stderrors.As(err, &unknown):
		return errors.NewItemNotFoundError(unknown.ID.String())
	case stderrors.Is(err, menu.ErrMenuArchived), stderrors.Is(err, outbound.ErrArchivedWrite):
		return errors.NewResourceStateError("archived menus cannot be modified").WithCause(err)
	case stderrors.Is(err, menu.ErrNotASuggestion):
		return errors.NewResourceStateError(err.Error()).WithCause(err)
	case stderrors.Is(err, menu.ErrFutureConsumption), stderrors.Is(err, menu.ErrConsumptionFrozen):
		return errors.NewTemporalGuardError(err.Error()).WithCause(err)
	case stderrors.Is(err, menu.ErrInvalidPortion),
		stderrors.Is(err, menu.ErrInvalidRecipeRef),
		stderrors.Is(err, menu.ErrInvalidStatus),
		stderrors.Is(err, menu.ErrInvalidItemStatus),
		stderrors.Is(err, menu.ErrInvalidServingTime),
		stderrors.Is(err, menu.ErrDuplicateItem),
		stderrors.Is(err, menu.ErrMissingMenuOwner):
		return errors.NewValidationError(err.Error())
	default:
		return errors.Wrap(err, "menu operation failed")
	}
}

func saveError(err error) error {
	if stderrors.Is(err, outbound.ErrArchivedWrite) {
		return translate(err)
	}
	return errors.NewDatabaseError("save daily menu", err)
}
