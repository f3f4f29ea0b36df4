package shared_test

import (
	"context"
	"errors"
	"labbook/shared"
	"labbook/shared/cache/mocks"
	"labbook/shared/constant"
	"labbook/shared/dto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	assert.Equal(t, 1, shared.CalculateTotalPage(0, 10))
	assert.Equal(t, 1, shared.CalculateTotalPage(5, 0))
	assert.Equal(t, 3, shared.CalculateTotalPage(21, 10))
	assert.Equal(t, 2, shared.CalculateTotalPage(20, 10))
}

func TestConvertStringToBool(t *testing.T) {
	assert.Nil(t, shared.ConvertStringToBool(""))
	assert.Nil(t, shared.ConvertStringToBool("maybe"))
	assert.True(t, *shared.ConvertStringToBool("true"))
}

func TestTransformFields(t *testing.T) {
	slot := 0

	type update struct {
		Title string `db:"title"`
		Slot  *int   `db:"slot"`
		Note  string
		Price float64 `db:"price"`
	}

	fields := shared.TransformFields(update{Title: "CBC", Slot: &slot}, "admin@lab.test")

	assert.Equal(t, "CBC", fields["title"])
	assert.Equal(t, 0, fields["slot"])
	assert.NotContains(t, fields, "price")
	assert.NotContains(t, fields, "Note")
	assert.Equal(t, "admin@lab.test", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestAppendEq(t *testing.T) {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

	shared.AppendEq(&group, "email", "ana@lab.test", "appointments")
	shared.AppendEq(&group, "status", "", "appointments")

	where, args := group.GetWhereClause()
	assert.Equal(t, "(appointments.email = :email)", where)
	assert.Equal(t, "ana@lab.test", args["email"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "test:get", shared.BuildCacheKey("test:get"))
	assert.Equal(t, "test:get:42", shared.BuildCacheKey("test:get", "42"))

	params := dto.QueryParams{Page: 1, Limit: 10}
	first := shared.BuildCacheKeyWithQuery("test:get_all", params, shared.FilterByID("1", "id", "tests"))
	second := shared.BuildCacheKeyWithQuery("test:get_all", params, shared.FilterByID("2", "id", "tests"))

	assert.NotEqual(t, first, second)
	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("test:get_all", params, shared.FilterByID("1", "id", "tests")))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCache := mocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), "statistics:summary*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), mockCache, "statistics:summary")
}

func TestNewObjectName(t *testing.T) {
	name := shared.NewObjectName("result.PDF")

	assert.True(t, strings.HasSuffix(name, ".PDF"))
	assert.NotEqual(t, name, shared.NewObjectName("result.PDF"))
	assert.NotContains(t, shared.NewObjectName("noext"), ".")
}
