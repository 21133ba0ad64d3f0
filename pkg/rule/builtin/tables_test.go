package builtin

import (
	"reflect"
	"testing"

	"github.com/tingban/tingban/pkg/model"
)

func TestRestWindow(t *testing.T) {
	tests := []struct {
		name string
		day  int
		want []int
	}{
		{"周一听班休周二", model.Monday, []int{model.Tuesday}},
		{"周二听班休周三", model.Tuesday, []int{model.Wednesday}},
		{"周三听班休周四", model.Wednesday, []int{model.Thursday}},
		{"周四听班休到周日", model.Thursday, []int{model.Friday, model.Saturday, model.Sunday}},
		{"周五听班休周末", model.Friday, []int{model.Saturday, model.Sunday}},
		{"周六听班休周日", model.Saturday, []int{model.Sunday}},
		{"周日听班本周无休", model.Sunday, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RestWindow(tt.day); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RestWindow(%d) = %v, want %v", tt.day, got, tt.want)
			}
		})
	}
}

func TestWorkEcho(t *testing.T) {
	tests := []struct {
		name string
		day  int
		want int
	}{
		{"周一听班周三白班", model.Monday, model.Wednesday},
		{"周二听班周四白班", model.Tuesday, model.Thursday},
		{"周三听班周五白班", model.Wednesday, model.Friday},
		{"周四无同周白班回响", model.Thursday, -1},
		{"周日无同周白班回响", model.Sunday, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WorkEcho(tt.day); got != tt.want {
				t.Errorf("WorkEcho(%d) = %d, want %d", tt.day, got, tt.want)
			}
		})
	}
}

func TestCarryoverRest(t *testing.T) {
	tests := []struct {
		name    string
		prevDay int
		want    []int
	}{
		{"上周四无跨周休息", model.Thursday, nil},
		{"上周五休本周一", model.Friday, []int{model.Monday}},
		{"上周六休本周一二", model.Saturday, []int{model.Monday, model.Tuesday}},
		{"上周日休本周一二", model.Sunday, []int{model.Monday, model.Tuesday}},
		{"上周一无跨周影响", model.Monday, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CarryoverRest(tt.prevDay); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CarryoverRest(%d) = %v, want %v", tt.prevDay, got, tt.want)
			}
		})
	}
}

func TestCarryoverWork(t *testing.T) {
	tests := []struct {
		name    string
		prevDay int
		want    int
	}{
		{"上周四白班本周一", model.Thursday, model.Monday},
		{"上周五白班本周二", model.Friday, model.Tuesday},
		{"上周六白班本周三", model.Saturday, model.Wednesday},
		{"上周日白班本周三", model.Sunday, model.Wednesday},
		{"上周三无跨周白班", model.Wednesday, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CarryoverWork(tt.prevDay); got != tt.want {
				t.Errorf("CarryoverWork(%d) = %d, want %d", tt.prevDay, got, tt.want)
			}
		})
	}
}
