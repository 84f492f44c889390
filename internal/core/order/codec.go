package order

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ItemSeparator は CommaCodec が使用する区切り文字です。
const ItemSeparator = ","

// ItemCodec は注文明細のリスト表現と保存用文字列表現を相互変換します。
type ItemCodec interface {
	Join(items []string) (string, error)
	Split(stored string) ([]string, error)
}

// CommaCodec は明細をカンマで連結して保存します。
//
// エスケープを行わないため、カンマを含む明細は読み出し時に分割されてしまいます。
// 空文字列は空のリストではなく 1 要素 [""] に分割されます。既存データとの互換のためこの挙動を維持しています。
type CommaCodec struct{}

// Join は明細をカンマで連結します。空のリストは空文字列になります。
func (CommaCodec) Join(items []string) (string, error) {
	return strings.Join(items, ItemSeparator), nil
}

// Split は保存された文字列をカンマで分割します。
func (CommaCodec) Split(stored string) ([]string, error) {
	return strings.Split(stored, ItemSeparator), nil
}

// JSONCodec は明細を JSON 配列の文字列として保存します。カンマを含む明細も往復できます。
type JSONCodec struct{}

// Join は明細を JSON 配列に符号化します。nil と空のリストは "[]" になります。
func (JSONCodec) Join(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("order: encode items: %w", err)
	}
	return string(b), nil
}

// Split は JSON 配列を明細リストに復号します。空文字列は空のリストとして扱います。
func (JSONCodec) Split(stored string) ([]string, error) {
	if strings.TrimSpace(stored) == "" {
		return []string{}, nil
	}

	var items []string
	if err := json.Unmarshal([]byte(stored), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrItemsDecode, err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

// CodecFor は設定値 ("comma" / "json") に対応するコーデックを返します。
func CodecFor(encoding string) (ItemCodec, error) {
	switch encoding {
	case "", "comma":
		return CommaCodec{}, nil
	case "json":
		return JSONCodec{}, nil
	default:
		return nil, fmt.Errorf("order: unknown items encoding %q", encoding)
	}
}
