package random

import (
	"regexp"
	"testing"
)

func TestGetAccessCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{8}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GetAccessCode(8)
		if !pattern.MatchString(code) {
			t.Fatalf("access code %q not in expected charset", code)
		}
		seen[code] = true
	}
	// 100 次生成全部撞车基本不可能
	if len(seen) < 2 {
		t.Fatal("access codes are not random")
	}
}

func TestGetNowAndLenRandomString(t *testing.T) {
	s := GetNowAndLenRandomString(13)
	// 6 位日期前缀 + 13 位随机
	if len(s) != 19 {
		t.Fatalf("len = %d, want 19", len(s))
	}
}
