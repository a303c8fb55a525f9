// Hand-written mock in MockGen's layout, not generated.
// Source: github.com/ctilde/ctilde/internal/codegen (interfaces: Codegen)

package build

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	codegen "github.com/ctilde/ctilde/internal/codegen"
)

// MockCodegen is a mock of the Codegen interface, hand-generated in the
// shape mockgen produces (SPEC_FULL §2.4), so the driver's stage-4 call
// site can be exercised with call expectations instead of a hand-rolled
// fake for at least one collaborator.
type MockCodegen struct {
	ctrl     *gomock.Controller
	recorder *MockCodegenMockRecorder
}

// MockCodegenMockRecorder is the mock recorder for MockCodegen.
type MockCodegenMockRecorder struct {
	mock *MockCodegen
}

// NewMockCodegen creates a new mock instance.
func NewMockCodegen(ctrl *gomock.Controller) *MockCodegen {
	mock := &MockCodegen{ctrl: ctrl}
	mock.recorder = &MockCodegenMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockCodegen) EXPECT() *MockCodegenMockRecorder {
	return m.recorder
}

// Generate mocks base method.
func (m *MockCodegen) Generate(units codegen.Units) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Generate", units)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Generate indicates an expected call of Generate.
func (mr *MockCodegenMockRecorder) Generate(units interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Generate", reflect.TypeOf((*MockCodegen)(nil).Generate), units)
}
