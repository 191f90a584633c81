// Package taxonomy 提供技能词表：规范技能名到其书写变体的静态映射。
// 词表在进程启动时构建一次，此后只读，可被任意数量的并发解析安全共享。
// 技能识别的召回率受词表覆盖范围限制，不在词表中的技术词不做推断，
// 这是有意的"准确率优先"取舍。
package taxonomy

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Taxonomy 不可变的技能词表
// 构建完成后不再修改，内部映射不对外暴露
type Taxonomy struct {
	bySynonym map[string]string // 归一化同义词 -> 规范名
	canonical []string          // 全部规范名（字母序）
	maxTokens int               // 同义词的最大词数，决定短语扫描窗口
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// normalizeKey 将候选词归一化为查表键：小写、修剪首尾标点、压缩空白
// 保留 + # . 等技术名称中有意义的字符（C++、C#、Node.js）
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, ",;:·•|()[]{}\"'")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return s
}

// New 从 规范名->同义词列表 的映射构建词表
// 规范名本身总是自己的同义词；同义词冲突时先写入者优先
func New(entries map[string][]string) (*Taxonomy, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("技能词表不能为空")
	}

	t := &Taxonomy{
		bySynonym: make(map[string]string, len(entries)*2),
	}

	names := make([]string, 0, len(entries))
	for canonical := range entries {
		names = append(names, canonical)
	}
	// 按规范名排序后再装载，保证同义词冲突的裁决与装载顺序无关
	sort.Strings(names)

	for _, canonical := range names {
		key := normalizeKey(canonical)
		if key == "" {
			return nil, fmt.Errorf("存在空的规范技能名")
		}
		t.addSynonym(key, canonical)
		for _, syn := range entries[canonical] {
			synKey := normalizeKey(syn)
			if synKey == "" {
				continue
			}
			t.addSynonym(synKey, canonical)
		}
	}

	t.canonical = names
	return t, nil
}

func (t *Taxonomy) addSynonym(key, canonical string) {
	if _, exists := t.bySynonym[key]; exists {
		return
	}
	t.bySynonym[key] = canonical
	if n := len(strings.Fields(key)); n > t.maxTokens {
		t.maxTokens = n
	}
}

// Load 构建词表：path为空时使用内置词表，否则从YAML文件载入
// 文件格式为 规范名: [同义词, ...]，文件内容完整替换内置词表
func Load(path string) (*Taxonomy, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取技能词表文件失败: %w", err)
	}

	var entries map[string][]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("解析技能词表文件失败: %w", err)
	}

	t, err := New(entries)
	if err != nil {
		return nil, fmt.Errorf("构建技能词表失败: %w", err)
	}
	return t, nil
}

// Default 返回内置词表
func Default() (*Taxonomy, error) {
	return New(builtinSkills)
}

// Canonical 查询候选词对应的规范技能名
// 匹配不区分大小写，同义词与规范名均可命中
func (t *Taxonomy) Canonical(candidate string) (string, bool) {
	name, ok := t.bySynonym[normalizeKey(candidate)]
	return name, ok
}

// MaxPhraseTokens 返回词表中同义词的最大词数
func (t *Taxonomy) MaxPhraseTokens() int {
	return t.maxTokens
}

// Size 返回规范技能名数量
func (t *Taxonomy) Size() int {
	return len(t.canonical)
}

// CanonicalNames 返回全部规范名的副本（字母序）
func (t *Taxonomy) CanonicalNames() []string {
	out := make([]string, len(t.canonical))
	copy(out, t.canonical)
	return out
}
