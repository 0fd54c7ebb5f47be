// Package mocks provides mock implementations of the ports used by the auth service
// and the HTTP layer.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	exchanger := mocks.NewMockCredentialExchanger(ctrl)
//	exchanger.EXPECT().Exchange(gomock.Any(), gomock.Any()).Return(resp, nil)
package mocks

// Generate mocks for the auth ports from internal/ports:
// CredentialExchanger (Exchange), ClaimsDecoder (Decode), ProfileStore (Save, Get, Delete)
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_ports_mock.go github.com/consultdesk/erp-ui/internal/ports CredentialExchanger,ClaimsDecoder,ProfileStore

// Generate mock for ModuleReader interface from internal/ports package.
// This creates MockModuleReader with methods List and Get.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=module_reader_mock.go github.com/consultdesk/erp-ui/internal/ports ModuleReader
