package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	notFound := New(KindNotFound, 13001, "课程不存在")

	if KindOf(notFound) != KindNotFound {
		t.Errorf("期望 not_found，实际 %s", KindOf(notFound))
	}
	if KindOf(fmt.Errorf("加载失败: %w", notFound)) != KindNotFound {
		t.Error("包装后的业务错误应保留分类")
	}
	if KindOf(errors.New("io timeout")) != KindInternal {
		t.Error("非业务错误应归为 internal")
	}
}

func TestSentinelIdentity(t *testing.T) {
	a := New(KindBadRequest, 1, "x")
	b := New(KindBadRequest, 1, "x")
	if errors.Is(a, b) {
		t.Error("不同的哨兵错误即使内容相同也不应相等")
	}
	if !errors.Is(fmt.Errorf("wrap: %w", a), a) {
		t.Error("errors.Is 应能穿透包装")
	}
}
