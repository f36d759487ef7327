package repository

import (
	apperrors "github.com/allisson/docsim/internal/errors"
)

var errConfigNotFound = apperrors.Wrap(apperrors.ErrNotFound, "store configuration not saved")
