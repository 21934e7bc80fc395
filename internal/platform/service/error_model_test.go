package service

import (
	"errors"
	"fmt"
	"testing"
)

// 测试内容：验证字段校验错误携带字段名且错误码为 validation。
func TestNewFieldError(t *testing.T) {
	err := NewFieldError("name", "名称不能为空")
	serviceErr, ok := AsServiceError(err)
	if !ok {
		t.Fatalf("期望为 ServiceError")
	}
	if serviceErr.Code != ErrorCodeValidation || serviceErr.Field != "name" {
		t.Fatalf("非预期错误: %+v", serviceErr)
	}
}

// 测试内容：验证 WrapInternal 保留底层错误且不重复包装业务错误。
func TestWrapInternal(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapInternal(cause)
	if !IsCode(err, ErrorCodeInternal) {
		t.Fatalf("期望 internal 错误，实际为 %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("期望可以追溯到底层错误")
	}
	if err.Error() != "disk full" {
		t.Fatalf("期望沿用底层消息，实际为 %q", err.Error())
	}

	notFound := NewNotFoundError("不存在")
	if WrapInternal(notFound) != notFound {
		t.Fatalf("业务错误不应被再次包装")
	}
	if WrapInternal(nil) != nil {
		t.Fatalf("nil 应原样返回")
	}
}

// 测试内容：验证被 fmt.Errorf 包裹的业务错误仍可识别。
func TestAsServiceError_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewConflictError("重复"))
	if !IsCode(err, ErrorCodeConflict) {
		t.Fatalf("期望识别为 conflict")
	}
}
