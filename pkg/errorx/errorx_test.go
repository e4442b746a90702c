package errorx

import (
	"errors"
	"testing"
)

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("record not found")
	err := Wrap(cause, CodeNotFound, "连接记录不存在")

	if !errors.Is(err, cause) {
		t.Fatal("wrapped error must match the cause via errors.Is")
	}
	if got := err.Error(); got != "连接记录不存在: record not found" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(CodeForbidden, "无权操作")); got != CodeForbidden {
		t.Fatalf("code = %d, want %d", got, CodeForbidden)
	}
	// 多层包装后依然能取到业务码
	inner := Wrap(errors.New("db down"), CodeDBError, "查询失败")
	outer := Wrap(inner, CodeServerBusy, "服务繁忙")
	if got := GetCode(outer); got != CodeServerBusy {
		t.Fatalf("outer code = %d, want %d", got, CodeServerBusy)
	}
	// 非 CodeError 回落到服务繁忙
	if got := GetCode(errors.New("plain")); got != CodeServerBusy {
		t.Fatalf("plain error code = %d, want %d", got, CodeServerBusy)
	}
}

func TestIsHelpers(t *testing.T) {
	if !IsNotFound(New(CodeNotFound, "不存在")) {
		t.Fatal("IsNotFound must match CodeNotFound")
	}
	if IsNotFound(New(CodeConflict, "冲突")) {
		t.Fatal("IsNotFound must not match other codes")
	}
	if !IsConflict(Wrap(errors.New("duplicate key"), CodeConflict, "记录已存在")) {
		t.Fatal("IsConflict must match wrapped CodeConflict")
	}
	if IsConflict(nil) {
		t.Fatal("IsConflict(nil) must be false")
	}
}
