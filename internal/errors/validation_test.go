package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/bbeaudet-dev/rollio-sub001/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("repository", "is required")
	ve.AddFieldError("catalog", "is required")

	s.True(ve.HasErrors())
	s.Equal("validation failed: catalog: is required; repository: is required", ve.Error())

	err := ve.ToError()
	s.Equal(errors.CodeInvalidArgument, err.Code)
	s.NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	s.Run("empty builder builds nil", func() {
		s.NoError(errors.NewValidationBuilder().Build())
	})

	s.Run("helpers record failures", func() {
		vb := errors.NewValidationBuilder()
		errors.ValidateRequired("redis_addr", "  ", vb)
		errors.ValidateMin("charm_slots", 0, 1, vb)
		errors.ValidateEnum("difficulty", "wood", []string{"plastic", "copper"}, vb)

		err := vb.Build()
		s.Error(err)
		s.True(errors.IsInvalidArgument(err))
		s.Contains(err.Error(), "redis_addr: is required")
		s.Contains(err.Error(), "charm_slots: must be at least 1")
		s.Contains(err.Error(), "difficulty: must be one of: plastic, copper")
	})

	s.Run("valid values record nothing", func() {
		vb := errors.NewValidationBuilder()
		errors.ValidateRequired("redis_addr", "localhost:6379", vb)
		errors.ValidateMin("charm_slots", 4, 1, vb)
		errors.ValidateEnum("difficulty", "copper", []string{"plastic", "copper"}, vb)
		s.NoError(vb.Build())
	})
}
