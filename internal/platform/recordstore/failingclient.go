package recordstore

import "context"

// MockFailingClient is a Client whose every call reports an
// application-level failure with a fixed message. It lives outside the
// test files because the entity-service tests in other packages use it to
// exercise their fail-soft contract.
type MockFailingClient struct {
	Message string
}

func (m *MockFailingClient) FetchRecords(context.Context, string, Query) (*FetchResponse, error) {
	return &FetchResponse{Success: false, Message: m.Message}, nil
}

func (m *MockFailingClient) GetRecordByID(context.Context, string, int, Query) (*GetResponse, error) {
	return &GetResponse{Success: false, Message: m.Message}, nil
}

func (m *MockFailingClient) CreateRecords(context.Context, string, []Fields) (*BatchResponse, error) {
	return &BatchResponse{Success: false, Message: m.Message}, nil
}

func (m *MockFailingClient) UpdateRecords(context.Context, string, []Fields) (*BatchResponse, error) {
	return &BatchResponse{Success: false, Message: m.Message}, nil
}

func (m *MockFailingClient) DeleteRecords(context.Context, string, []int) (*BatchResponse, error) {
	return &BatchResponse{Success: false, Message: m.Message}, nil
}
