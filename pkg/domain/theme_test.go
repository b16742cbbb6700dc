package domain

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestThemeCatalog_Builtins(t *testing.T) {
	c := DefaultThemeCatalog()

	if got := c.Names(); !reflect.DeepEqual(got, []string{"dark", "default", "light"}) {
		t.Errorf("組み込みテーマ名が違います: %v", got)
	}

	dark, ok := c.Lookup("dark")
	if !ok {
		t.Fatal("dark テーマが見つかりません")
	}
	if dark.Font != "Calibri" || dark.BackgroundColor != "000000" || dark.Name != "dark" {
		t.Errorf("dark テーマの属性が違います: %+v", dark)
	}

	if got := c.Resolve("no-such-theme"); got.Name != DefaultThemeName {
		t.Errorf("未知のテーマは default に解決されるはずです: %s", got.Name)
	}
}

func TestLoadThemeCatalog(t *testing.T) {
	t.Run("YAML の追加テーマがマージされること", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "themes.yaml")
		yml := `ocean:
  font: Georgia
  font_size: 22
  title_color: "003B5C"
  content_color: "#1F4E79"
  background_color: "E6F2FA"
`
		if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
			t.Fatal(err)
		}

		c, err := LoadThemeCatalog(path)
		if err != nil {
			t.Fatalf("読み込みに失敗しました: %v", err)
		}
		ocean, ok := c.Lookup("ocean")
		if !ok {
			t.Fatal("ocean テーマが見つかりません")
		}
		if ocean.Font != "Georgia" || ocean.FontSize != 22 {
			t.Errorf("ocean テーマの属性が違います: %+v", ocean)
		}
		if !c.Has("default") {
			t.Error("組み込みテーマが失われました")
		}
	})

	t.Run("不正な色は拒否されること", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "themes.yaml")
		yml := `broken:
  font: Arial
  font_size: 20
  title_color: "GGGGGG"
  content_color: "000000"
  background_color: "FFFFFF"
`
		if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadThemeCatalog(path); err == nil {
			t.Error("不正な色でエラーが発生しませんでした")
		}
	})

	t.Run("パスが空なら組み込みのみ", func(t *testing.T) {
		c, err := LoadThemeCatalog("")
		if err != nil {
			t.Fatal(err)
		}
		if len(c.Names()) != 3 {
			t.Errorf("テーマ数が違います: %v", c.Names())
		}
	})
}

func TestParseHexColor(t *testing.T) {
	got, err := ParseHexColor("00509E")
	if err != nil {
		t.Fatal(err)
	}
	if got != (RGB{R: 0x00, G: 0x50, B: 0x9E}) {
		t.Errorf("変換結果が違います: %+v", got)
	}

	for _, bad := range []string{"", "FFF", "12345G", "1234567"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("%q でエラーが発生しませんでした", bad)
		}
	}
}
