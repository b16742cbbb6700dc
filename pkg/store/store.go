package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/shouni/go-deck-kit/pkg/asset"
	"github.com/shouni/go-deck-kit/pkg/domain"
)

const (
	// DefaultCacheTTL はメタデータをメモリに保持する既定の期間です。
	DefaultCacheTTL = 10 * time.Minute

	filePerm = 0o644
	dirPerm  = 0o755
)

// Store はレンダリング済み文書とメタデータを ID 単位で永続化するインターフェースです。
type Store interface {
	Save(ctx context.Context, p domain.Presentation, doc []byte) error
	Load(ctx context.Context, id string) (domain.Presentation, error)
	ReadDocument(ctx context.Context, id string) ([]byte, error)
	List(ctx context.Context) ([]domain.Presentation, error)
}

// FileStore はローカルディレクトリに {id}{ext} と {id}.json を書き込む Store の実装です。
// 文書の書き込みが成功した後にだけメタデータを書き込みます。
type FileStore struct {
	dir    string
	docExt string
	cache  *cache.Cache
	group  singleflight.Group
}

// NewFileStore は保存先ディレクトリを作成し、FileStore を初期化します。
// ttl が 0 以下の場合は DefaultCacheTTL を使います。
func NewFileStore(dir, docExt string, ttl time.Duration) (*FileStore, error) {
	if dir == "" {
		dir = asset.DefaultStorageDir
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("%w: 保存先ディレクトリの作成に失敗しました (%s): %w", domain.ErrStorage, dir, err)
	}
	return &FileStore{
		dir:    dir,
		docExt: docExt,
		cache:  cache.New(ttl, 2*ttl),
	}, nil
}

// Dir は保存先ディレクトリを返します。
func (s *FileStore) Dir() string {
	return s.dir
}

// Save は文書、メタデータの順に一時ファイル経由で書き込みます。
// 同じ ID の既存ファイルは上書きされます。
func (s *FileStore) Save(ctx context.Context, p domain.Presentation, doc []byte) error {
	if err := checkID(p.ID); err != nil {
		return fmt.Errorf("%w: 不正な ID です: %q", domain.ErrStorage, p.ID)
	}
	if len(doc) == 0 {
		return fmt.Errorf("%w: 空の文書は保存できません", domain.ErrStorage)
	}

	docPath, err := s.path(asset.DocumentFileName(p.ID, s.docExt))
	if err != nil {
		return err
	}
	metaPath, err := s.path(asset.MetadataFileName(p.ID))
	if err != nil {
		return err
	}

	if err := writeAtomic(docPath, doc); err != nil {
		return fmt.Errorf("%w: 文書の書き込みに失敗しました: %w", domain.ErrStorage, err)
	}

	meta, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: メタデータのシリアライズに失敗しました: %w", domain.ErrStorage, err)
	}
	if err := writeAtomic(metaPath, meta); err != nil {
		return fmt.Errorf("%w: メタデータの書き込みに失敗しました: %w", domain.ErrStorage, err)
	}

	s.cache.SetDefault(p.ID, clonePresentation(p))
	slog.InfoContext(ctx, "Presentation saved", "id", p.ID, "document", docPath, "bytes", len(doc))
	return nil
}

// Load はメタデータを読み込みます。キャッシュにない同一 ID の同時読み込みは1回にまとめます。
func (s *FileStore) Load(ctx context.Context, id string) (domain.Presentation, error) {
	if err := checkID(id); err != nil {
		return domain.Presentation{}, err
	}
	if v, ok := s.cache.Get(id); ok {
		return clonePresentation(v.(domain.Presentation)), nil
	}

	v, err, shared := s.group.Do(id, func() (any, error) {
		return s.readMetadata(id)
	})
	if err != nil {
		return domain.Presentation{}, err
	}
	p := v.(domain.Presentation)
	if !shared {
		s.cache.SetDefault(id, p)
	}
	slog.DebugContext(ctx, "Presentation metadata loaded", "id", id, "shared", shared)
	return clonePresentation(p), nil
}

func (s *FileStore) readMetadata(id string) (domain.Presentation, error) {
	metaPath, err := s.path(asset.MetadataFileName(id))
	if err != nil {
		return domain.Presentation{}, err
	}
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Presentation{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return domain.Presentation{}, fmt.Errorf("%w: メタデータの読み込みに失敗しました: %w", domain.ErrStorage, err)
	}
	var p domain.Presentation
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.Presentation{}, fmt.Errorf("%w: メタデータの解析に失敗しました (%s): %w", domain.ErrStorage, id, err)
	}
	return p, nil
}

// ReadDocument は保存済みの文書を読み込みます。
func (s *FileStore) ReadDocument(ctx context.Context, id string) ([]byte, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	docPath, err := s.path(asset.DocumentFileName(id, s.docExt))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(docPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: 文書の読み込みに失敗しました: %w", domain.ErrStorage, err)
	}
	slog.DebugContext(ctx, "Presentation document loaded", "id", id, "bytes", len(data))
	return data, nil
}

// List は保存済みのメタデータを ID 順に返します。解析できないファイルは読み飛ばします。
func (s *FileStore) List(ctx context.Context) ([]domain.Presentation, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: 保存先ディレクトリの走査に失敗しました: %w", domain.ErrStorage, err)
	}

	var out []domain.Presentation
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		id, ok := asset.IDFromMetadataFile(e.Name())
		if !ok {
			continue
		}
		p, err := s.Load(ctx, id)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable metadata", "file", e.Name(), "error", err)
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *FileStore) path(fileName string) (string, error) {
	p, err := asset.ResolveOutputPath(s.dir, fileName)
	if err != nil {
		return "", fmt.Errorf("%w: 出力パスの解決に失敗しました: %w", domain.ErrStorage, err)
	}
	return p, nil
}

// checkID は ID が正規形の UUID であることを確認します。パスの組み立て前に呼び出します。
func checkID(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil || parsed.String() != id {
		return fmt.Errorf("%w: %q", domain.ErrNotFound, id)
	}
	return nil
}

// writeAtomic は一時ファイルに書き込んでから rename で置き換えます。
func writeAtomic(path string, data []byte) error {
	tmp := asset.TempPath(path)
	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func clonePresentation(p domain.Presentation) domain.Presentation {
	p.Layouts = append([]domain.Layout(nil), p.Layouts...)
	return p
}
