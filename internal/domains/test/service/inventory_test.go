package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"labbook/infras/otel/mocks"
	testMocks "labbook/internal/domains/test/mocks"
	"labbook/internal/domains/test/model"
	"labbook/internal/domains/test/service"
	"labbook/shared/failure"
)

func TestInventory_Reserve(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(repo *testMocks.MockTest)
		wantErr       bool
		wantCode      int
		wantExhausted bool
	}{
		{
			name: "slot reserved",
			setupMock: func(repo *testMocks.MockTest) {
				repo.EXPECT().ReserveSlot(gomock.Any(), gomock.Any(), "t1").
					Return(model.Test{ID: "t1", Slot: 4, DataCount: 1}, true, nil)
			},
		},
		{
			name: "no slot left",
			setupMock: func(repo *testMocks.MockTest) {
				repo.EXPECT().ReserveSlot(gomock.Any(), gomock.Any(), "t1").Return(model.Test{}, false, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantErr:       true,
			wantCode:      409,
			wantExhausted: true,
		},
		{
			name: "unknown test",
			setupMock: func(repo *testMocks.MockTest) {
				repo.EXPECT().ReserveSlot(gomock.Any(), gomock.Any(), "t1").Return(model.Test{}, false, nil)
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "storage error",
			setupMock: func(repo *testMocks.MockTest) {
				repo.EXPECT().ReserveSlot(gomock.Any(), gomock.Any(), "t1").Return(model.Test{}, false, errors.New("conn reset"))
			},
			wantErr:  true,
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := testMocks.NewMockTest(ctrl)
			tt.setupMock(repo)

			inv := service.NewInventory(repo, mocks.NewOtel())

			test, err := inv.Reserve(context.Background(), nil, "t1")

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, 4, test.Slot)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantExhausted, failure.IsSlotExhausted(err))
		})
	}
}
