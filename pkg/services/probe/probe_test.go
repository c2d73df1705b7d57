package probe

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"nil error", nil, ErrorNone},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, ErrorAuthorization},
		{"unauthorized operation", &smithy.GenericAPIError{Code: "UnauthorizedOperation"}, ErrorAuthorization},
		{"access denied exception", &smithy.GenericAPIError{Code: "AccessDeniedException"}, ErrorAuthorization},
		{"other api error", &smithy.GenericAPIError{Code: "Throttling"}, ErrorOther},
		{"plain error", errors.New("dial tcp: timeout"), ErrorOther},
		{
			"wrapped denial",
			fmt.Errorf("operation failed: %w", &smithy.GenericAPIError{Code: "AccessDenied"}),
			ErrorAuthorization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.err))
		})
	}
}

func TestResultConstructors(t *testing.T) {
	ok := Succeeded("payload")
	assert.True(t, ok.OK)
	assert.Equal(t, "payload", ok.Payload)
	assert.Equal(t, ErrorNone, ok.Category)

	denied := Failed(&smithy.GenericAPIError{Code: "AccessDenied"})
	assert.False(t, denied.OK)
	assert.Equal(t, ErrorAuthorization, denied.Category)
	assert.Error(t, denied.Err)

	broken := Failed(errors.New("boom"))
	assert.False(t, broken.OK)
	assert.Equal(t, ErrorOther, broken.Category)
}
