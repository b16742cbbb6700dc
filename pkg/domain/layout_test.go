package domain

import (
	"errors"
	"reflect"
	"testing"
)

func TestReconcileLayouts(t *testing.T) {
	tests := []struct {
		name    string
		layouts []Layout
		n       int
		want    []Layout
	}{
		{
			name:    "不足分は bullet_points で埋める",
			layouts: []Layout{LayoutTitle},
			n:       3,
			want:    []Layout{LayoutTitle, LayoutBulletPoints, LayoutBulletPoints},
		},
		{
			name:    "超過分は切り詰める",
			layouts: []Layout{LayoutTitle, LayoutTwoColumn, LayoutContentWithImage},
			n:       2,
			want:    []Layout{LayoutTitle, LayoutTwoColumn},
		},
		{
			name:    "空のリスト",
			layouts: nil,
			n:       2,
			want:    []Layout{LayoutBulletPoints, LayoutBulletPoints},
		},
		{
			name:    "長さが一致",
			layouts: []Layout{LayoutTwoColumn},
			n:       1,
			want:    []Layout{LayoutTwoColumn},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileLayouts(tt.layouts, tt.n)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("期待: %v, 実際: %v", tt.want, got)
			}
		})
	}
}

func TestReconcileLayouts_AllCounts(t *testing.T) {
	src := []Layout{LayoutTitle, LayoutTwoColumn, LayoutContentWithImage, LayoutTitle, LayoutTwoColumn}
	for n := MinSlides; n <= MaxSlides; n++ {
		for k := 0; k <= len(src); k++ {
			got := ReconcileLayouts(src[:k], n)
			if len(got) != n {
				t.Fatalf("n=%d k=%d: 長さ %d", n, k, len(got))
			}
			for i, l := range got {
				if i < k && l != src[i] {
					t.Fatalf("n=%d k=%d: 位置 %d が %s", n, k, i, l)
				}
				if i >= k && l != LayoutBulletPoints {
					t.Fatalf("n=%d k=%d: 位置 %d が bullet_points ではない: %s", n, k, i, l)
				}
			}
		}
	}
}

func TestReconcileLayouts_DoesNotMutateInput(t *testing.T) {
	in := []Layout{LayoutTitle, LayoutTwoColumn, LayoutTitle}
	_ = ReconcileLayouts(in[:1], 3)
	if in[1] != LayoutTwoColumn {
		t.Errorf("入力スライスが変更されました: %v", in)
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in   string
		want Layout
		ok   bool
	}{
		{"title", LayoutTitle, true},
		{" Two Column ", LayoutTwoColumn, true},
		{"content-with-image", LayoutContentWithImage, true},
		{"**bullet_points**", LayoutBulletPoints, true},
		{"quote", Layout("quote"), false},
	}
	for _, tt := range tests {
		got, ok := ParseLayout(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLayout(%q) = (%q, %v), 期待 (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}

	if got := NormalizeLayout("quote"); got != LayoutBulletPoints {
		t.Errorf("未知のタグは bullet_points になるはずです: %s", got)
	}
}

func TestParseLayouts(t *testing.T) {
	got, err := ParseLayouts([]string{"title", "two_column"})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if !reflect.DeepEqual(got, []Layout{LayoutTitle, LayoutTwoColumn}) {
		t.Errorf("変換結果が違います: %v", got)
	}

	// 保存される語彙は大文字小文字を区別する
	_, err = ParseLayouts([]string{"Title"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("ErrValidation を期待しましたが %v でした", err)
	}
}

func TestLayoutFields(t *testing.T) {
	if got := LayoutTwoColumn.Fields().Optional; !reflect.DeepEqual(got, []string{FieldLeftPoints, FieldRightPoints}) {
		t.Errorf("two_column のフィールドが違います: %v", got)
	}
	if got := Layout("unknown").Fields(); !reflect.DeepEqual(got, LayoutBulletPoints.Fields()) {
		t.Errorf("未知のタグは bullet_points のフィールドを返すはずです: %v", got)
	}
}
