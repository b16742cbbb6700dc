package asset

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultStorageDir は生成した文書とメタデータを格納するデフォルトのディレクトリ名です。
	DefaultStorageDir = "presentations"
	// MetadataExt はメタデータ JSON の拡張子です。
	MetadataExt = ".json"
	// tempSuffix は書き込み途中のファイルに付ける接尾辞です。
	tempSuffix = ".tmp"
)

// MetadataFileRegex は保存済みメタデータ ({uuid}.json) に一致します。
var MetadataFileRegex = createIDFileRegex(MetadataExt)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// DocumentFileName は ID と拡張子から文書のファイル名を返します。
// 例: "1b4e...", ".pdf" -> "1b4e....pdf"
func DocumentFileName(id, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return id + ext
}

// MetadataFileName は ID に対応するメタデータのファイル名を返します。
func MetadataFileName(id string) string {
	return id + MetadataExt
}

// TempPath は書き込み途中のファイルパスを返します。
func TempPath(path string) string {
	return path + tempSuffix
}

// IDFromMetadataFile はメタデータのファイル名から ID を取り出します。
func IDFromMetadataFile(name string) (string, bool) {
	name = filepath.Base(name)
	if !MetadataFileRegex.MatchString(name) {
		return "", false
	}
	return strings.TrimSuffix(name, MetadataExt), true
}

// createIDFileRegex は、UUID をベース名に持つファイル用の正規表現を生成します。
// 例: ".json" -> ^[0-9a-f-]{36}\.json$
func createIDFileRegex(ext string) *regexp.Regexp {
	pattern := fmt.Sprintf(`^[0-9a-fA-F-]{36}%s$`, regexp.QuoteMeta(ext))
	return regexp.MustCompile(pattern)
}
