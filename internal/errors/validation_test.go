package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dmforge/initiative-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestBuilderEmpty() {
	vb := errors.NewValidationBuilder()
	s.Assert().NoError(vb.Build())
}

func (s *ValidationTestSuite) TestBuilderRequiredField() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("name")

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Contains(err.Error(), "name")
}

func (s *ValidationTestSuite) TestValidateRequired() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", "  ", vb)
	errors.ValidateRequired("hp", "42", vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "name")
	s.Assert().NotContains(err.Error(), "hp")
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("rechargeOn", 7, 2, 6, vb)

	err := vb.Build()
	s.Require().Error(err)
	s.Assert().Contains(err.Error(), "between 2 and 6")
}

func (s *ValidationTestSuite) TestMultipleFields() {
	vb := errors.NewValidationBuilder()
	vb.RequiredField("name")
	vb.Fieldf("maxHp", "must be greater than %d", 0)

	err := vb.Build()
	s.Require().Error(err)

	var customErr *errors.Error
	s.Require().True(errors.As(err, &customErr))
	s.Assert().NotNil(customErr.Meta["validation_errors"])
}
