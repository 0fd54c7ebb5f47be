package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/consultdesk/erp-ui/internal/errors"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, "", Classify(nil))
	assert.Equal(t, "invalid_credentials", Classify(fmt.Errorf("login: %w", apperrors.InvalidCredentials())))
	assert.Equal(t, "backend_unreachable", Classify(apperrors.BackendUnreachable(context.DeadlineExceeded)))
	assert.Equal(t, "errors_errorstring", Classify(fmt.Errorf("wrap: %w", errors.New("x"))))
}
