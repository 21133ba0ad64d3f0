package rule

import (
	"testing"
	"time"

	"github.com/tingban/tingban/pkg/model"
)

// stubRule 测试用规则
type stubRule struct {
	name     string
	priority int
	pass     bool
}

func (r *stubRule) Name() string  { return r.name }
func (r *stubRule) Priority() int { return r.priority }
func (r *stubRule) Validate(string, int, model.DutyType, *model.WeekAssignment, model.History) bool {
	return r.pass
}

func testWeek() *model.WeekAssignment {
	return model.NewWeekAssignment(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC))
}

func TestCatalogOrdering(t *testing.T) {
	c := NewCatalog(
		&stubRule{name: "低", priority: 10, pass: true},
		&stubRule{name: "高", priority: 90, pass: true},
		&stubRule{name: "中一", priority: 50, pass: true},
		&stubRule{name: "中二", priority: 50, pass: true},
	)

	list := c.List()
	want := []string{"高", "中一", "中二", "低"}
	if len(list) != len(want) {
		t.Fatalf("规则数量 = %d, want %d", len(list), len(want))
	}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("位置 %d 的规则 = %s, want %s（优先级降序，同级按注册顺序）", i, list[i].Name, name)
		}
	}
}

func TestCatalogRegisterReplacesSameName(t *testing.T) {
	c := NewCatalog(&stubRule{name: "规则", priority: 10, pass: true})
	c.Register(&stubRule{name: "规则", priority: 80, pass: false})

	if c.Count() != 1 {
		t.Fatalf("同名注册后规则数量 = %d, want 1", c.Count())
	}
	if c.List()[0].Priority != 80 {
		t.Error("同名注册应替换为新优先级")
	}
}

func TestCatalogRemove(t *testing.T) {
	c := NewCatalog(&stubRule{name: "规则", priority: 10, pass: true})
	if !c.Remove("规则") {
		t.Error("移除存在的规则应返回 true")
	}
	if c.Remove("规则") {
		t.Error("重复移除应返回 false")
	}
	if c.Count() != 0 {
		t.Errorf("移除后数量 = %d, want 0", c.Count())
	}
}

func TestCatalogValidate(t *testing.T) {
	week := testWeek()

	c := NewCatalog(
		&stubRule{name: "放行", priority: 90, pass: true},
		&stubRule{name: "拦截", priority: 50, pass: false},
	)
	if c.Validate("张三", model.Monday, model.DutyOnCall, week, nil) {
		t.Error("任一规则不通过时 Validate 应为 false")
	}

	c.Remove("拦截")
	if !c.Validate("张三", model.Monday, model.DutyOnCall, week, nil) {
		t.Error("全部规则通过时 Validate 应为 true")
	}
}

func TestCatalogExplain(t *testing.T) {
	week := testWeek()
	c := NewCatalog(
		&stubRule{name: "低拦", priority: 20, pass: false},
		&stubRule{name: "高拦", priority: 95, pass: false},
		&stubRule{name: "放行", priority: 60, pass: true},
	)

	failures := c.Explain("张三", model.Monday, model.DutyOnCall, week, nil)
	if len(failures) != 2 {
		t.Fatalf("失败规则数量 = %d, want 2", len(failures))
	}
	if failures[0].Name != "高拦" || failures[1].Name != "低拦" {
		t.Errorf("Explain 应按优先级降序: %v", failures)
	}
}

func TestCatalogValidateAbove(t *testing.T) {
	week := testWeek()
	c := NewCatalog(
		&stubRule{name: "高过", priority: 90, pass: true},
		&stubRule{name: "低拦", priority: 50, pass: false},
	)

	if !c.ValidateAbove(88, "张三", model.Monday, model.DutyOnCall, week, nil) {
		t.Error("低于阈值的失败规则不应影响 ValidateAbove")
	}
	if c.ValidateAbove(40, "张三", model.Monday, model.DutyOnCall, week, nil) {
		t.Error("阈值覆盖到失败规则时应返回 false")
	}
}
