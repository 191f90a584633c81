package taxonomy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultTaxonomyLookup 验证内置词表的基本查询能力
func TestDefaultTaxonomyLookup(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err, "构建内置词表不应失败")
	require.Greater(t, tax.Size(), 50, "内置词表的规模不应缩水")

	tests := []struct {
		candidate string
		want      string
	}{
		{"Python", "Python"},
		{"python", "Python"},
		{"PYTHON", "Python"},
		{"k8s", "Kubernetes"},
		{"K8S", "Kubernetes"},
		{"golang", "Go"},
		{"postgres", "PostgreSQL"},
		{"amazon web services", "AWS"},
		{"node js", "Node.js"},
		{"rest apis", "REST"},
	}

	for _, tt := range tests {
		got, ok := tax.Canonical(tt.candidate)
		assert.True(t, ok, "候选词 %q 应当命中词表", tt.candidate)
		assert.Equal(t, tt.want, got, "候选词 %q 的规范名不符", tt.candidate)
	}
}

// TestTaxonomyNormalization 验证查表键的归一化：大小写、首尾标点、空白压缩
func TestTaxonomyNormalization(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	got, ok := tax.Canonical("  Python, ")
	assert.True(t, ok, "首尾标点不应影响命中")
	assert.Equal(t, "Python", got)

	got, ok = tax.Canonical("spring   boot")
	assert.True(t, ok, "连续空白应被压缩后再查表")
	assert.Equal(t, "Spring Boot", got)

	// 技术名称中有意义的字符必须保留
	got, ok = tax.Canonical("c++")
	assert.True(t, ok)
	assert.Equal(t, "C++", got)

	got, ok = tax.Canonical("C#")
	assert.True(t, ok)
	assert.Equal(t, "C#", got)
}

// TestTaxonomyUnknownTerm 词表之外的词绝不命中，这是准确率优先的设计取舍
func TestTaxonomyUnknownTerm(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)

	_, ok := tax.Canonical("somethingmadeup")
	assert.False(t, ok, "词表之外的词不应命中")

	_, ok = tax.Canonical("")
	assert.False(t, ok, "空串不应命中")
}

// TestNewTaxonomyValidation 空词表与空规范名都应拒绝
func TestNewTaxonomyValidation(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err, "空词表应当被拒绝")

	_, err = New(map[string][]string{"  ": {"x"}})
	assert.Error(t, err, "空的规范名应当被拒绝")
}

// TestLoadTaxonomyFromFile 外部YAML词表完整替换内置词表
func TestLoadTaxonomyFromFile(t *testing.T) {
	content := `
Rust:
  - rustlang
Zig: []
`
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "skills.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "无法写入临时词表文件")

	tax, err := Load(path)
	require.NoError(t, err, "加载词表文件不应失败")
	assert.Equal(t, 2, tax.Size(), "外部词表应完整替换内置词表")

	got, ok := tax.Canonical("rustlang")
	assert.True(t, ok)
	assert.Equal(t, "Rust", got)

	_, ok = tax.Canonical("python")
	assert.False(t, ok, "内置词表的条目不应残留")
}

// TestLoadTaxonomyMissingFile 文件不存在时报错而不是悄悄退回内置词表
func TestLoadTaxonomyMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such-file.yaml"))
	assert.Error(t, err)
}

// TestCanonicalNames 规范名列表按字母序输出，且返回副本不泄漏内部状态
func TestCanonicalNames(t *testing.T) {
	tax, err := New(map[string][]string{
		"Python": {"python3"},
		"Go":     {"golang"},
		"Java":   nil,
	})
	require.NoError(t, err)

	names := tax.CanonicalNames()
	assert.Equal(t, []string{"Go", "Java", "Python"}, names)

	// 修改返回的切片不应影响词表本身
	names[0] = "tampered"
	assert.Equal(t, []string{"Go", "Java", "Python"}, tax.CanonicalNames())
}

// TestMaxPhraseTokens 短语扫描窗口由最长的同义词决定
func TestMaxPhraseTokens(t *testing.T) {
	tax, err := Default()
	require.NoError(t, err)
	// "google cloud platform" 等三词同义词在内置词表中
	assert.GreaterOrEqual(t, tax.MaxPhraseTokens(), 3, "短语窗口不应小于最长同义词的词数")
}
