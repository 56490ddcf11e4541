package errors_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dmforge/initiative-api/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "battle not found",
			expected: "NOT_FOUND: battle not found",
		},
		{
			name:     "invalid argument error",
			code:     errors.CodeInvalidArgument,
			message:  "invalid input",
			expected: "INVALID_ARGUMENT: invalid input",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("battle not found").
		WithMeta("battle_id", "123").
		WithMeta("owner_id", "456")

	s.Assert().Equal("123", err.Meta["battle_id"])
	s.Assert().Equal("456", err.Meta["owner_id"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("redis connection refused")
	wrapped := errors.Wrap(baseErr, "failed to get battle")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to get battle", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	notFound := errors.NotFound("battle not found")
	wrapped := errors.Wrap(notFound, "failed to advance turn")

	s.Assert().Equal(errors.CodeNotFound, wrapped.Code)
	s.Assert().True(errors.IsNotFound(wrapped))
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
}

func (s *ErrorsTestSuite) TestGetCode() {
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
	s.Assert().Equal(errors.CodeNotFound, errors.GetCode(errors.NotFound("gone")))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestTypeCheckers() {
	s.Assert().True(errors.IsNotFound(errors.NotFound("x")))
	s.Assert().True(errors.IsInvalidArgument(errors.InvalidArgument("x")))
	s.Assert().True(errors.IsAlreadyExists(errors.AlreadyExists("x")))
	s.Assert().True(errors.IsUnauthenticated(errors.Unauthenticated("x")))
	s.Assert().False(errors.IsNotFound(errors.Internal("x")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code   errors.Code
		status int
	}{
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeUnauthenticated, http.StatusUnauthorized},
		{errors.CodeAlreadyExists, http.StatusConflict},
		{errors.CodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Assert().Equal(tc.status, tc.code.HTTPStatus())
	}
}

func (s *ErrorsTestSuite) TestWriteJSON() {
	rec := httptest.NewRecorder()
	errors.WriteJSON(rec, errors.NotFound("battle not found"))

	s.Assert().Equal(http.StatusNotFound, rec.Code)
	s.Assert().Equal("application/json", rec.Header().Get("Content-Type"))
	s.Assert().Contains(rec.Body.String(), "battle not found")
}

func (s *ErrorsTestSuite) TestWriteJSONHidesInternalDetails() {
	rec := httptest.NewRecorder()
	errors.WriteJSON(rec, errors.Wrap(fmt.Errorf("dial tcp: connection refused"), "redis down"))

	s.Assert().Equal(http.StatusInternalServerError, rec.Code)
	s.Assert().NotContains(rec.Body.String(), "connection refused")
}
