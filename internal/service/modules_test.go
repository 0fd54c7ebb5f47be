package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/consultdesk/erp-ui/internal/domain/erp"
	apperrors "github.com/consultdesk/erp-ui/internal/errors"
	"github.com/consultdesk/erp-ui/internal/mocks"
	"github.com/consultdesk/erp-ui/internal/ports"
)

func mustModule(t *testing.T, key string) erp.Module {
	t.Helper()
	m, ok := erp.Lookup(key)
	require.True(t, ok, key)
	return m
}

func TestModuleService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockModuleReader(ctrl)
	reader.EXPECT().List(gomock.Any(), "tok", "projects").
		Return([]ports.Record{{"_id": "p1"}}, nil)

	svc := NewModuleService(ModuleServiceOptions{Reader: reader})
	recs, err := svc.List(context.Background(), "tok", mustModule(t, "projects"))
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestModuleService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockModuleReader(ctrl)
	reader.EXPECT().Get(gomock.Any(), "tok", "claims", "c1").
		Return(nil, apperrors.NotFound("claim not found"))

	svc := NewModuleService(ModuleServiceOptions{Reader: reader})
	_, err := svc.Get(context.Background(), "tok", mustModule(t, "claims"), "c1")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = svc.Get(context.Background(), "tok", mustModule(t, "claims"), "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestModuleService_Counts(t *testing.T) {
	ctrl := gomock.NewController(t)
	reader := mocks.NewMockModuleReader(ctrl)
	reader.EXPECT().List(gomock.Any(), "tok", "projects").
		Return([]ports.Record{{"_id": "p1"}, {"_id": "p2"}}, nil)
	reader.EXPECT().List(gomock.Any(), "tok", "budget").
		Return(nil, apperrors.BackendUnreachable(errors.New("down")))
	reader.EXPECT().List(gomock.Any(), "tok", "claims").
		Return([]ports.Record{}, nil)

	svc := NewModuleService(ModuleServiceOptions{Reader: reader, Concurrency: 2})
	mods := []erp.Module{mustModule(t, "projects"), mustModule(t, "budget"), mustModule(t, "claims")}
	counts := svc.Counts(context.Background(), "tok", mods)

	require.Len(t, counts, 3)
	assert.Equal(t, "projects", counts[0].Module.Key)
	assert.Equal(t, 2, counts[0].Count)
	assert.NoError(t, counts[0].Err)
	assert.True(t, apperrors.IsBackendUnreachable(counts[1].Err))
	assert.Equal(t, 0, counts[2].Count)
	assert.NoError(t, counts[2].Err)
}
