package llmreport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptStore_Defaults(t *testing.T) {
	store := NewPromptStore(filepath.Join(t.TempDir(), "missing.yaml"))

	t.Run("四种报告类型都有内置模板", func(t *testing.T) {
		for _, kind := range []string{KindProject, KindDeptMonthly, KindProjectWeekly, KindPersonal} {
			tpl := store.Get(kind)
			assert.NotEmpty(t, tpl.System, kind)
			assert.NotEmpty(t, tpl.User, kind)
		}
	})

	t.Run("模板保留占位符", func(t *testing.T) {
		assert.Contains(t, store.Get(KindDeptMonthly).User, "{context}")
		assert.Contains(t, store.Get(KindProjectWeekly).User, "{team_updates}")
		assert.Contains(t, store.Get(KindProject).User, "{event_text}")
		assert.Contains(t, store.Get(KindPersonal).User, "{project_context}")
	})

	t.Run("未知键返回空模板", func(t *testing.T) {
		tpl := store.Get("quarterly")
		assert.Empty(t, tpl.System)
		assert.Empty(t, tpl.User)
	})
}

func TestPromptStore_Overrides(t *testing.T) {
	writeFile := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("只覆盖非空字段", func(t *testing.T) {
		path := writeFile(t, "dept_monthly:\n  system: \"自定义专家\"\n")
		store := NewPromptStore(path)

		tpl := store.Get(KindDeptMonthly)
		assert.Equal(t, "自定义专家", tpl.System)
		// user 未覆盖，沿用内置
		assert.Contains(t, tpl.User, "{context}")
	})

	t.Run("解析失败回退内置模板", func(t *testing.T) {
		path := writeFile(t, ":::not yaml:::")
		store := NewPromptStore(path)

		assert.Equal(t, "你是一个部门项目管理专家。请使用中文输出。", store.Get(KindDeptMonthly).System)
	})

	t.Run("其他键不受覆盖影响", func(t *testing.T) {
		path := writeFile(t, "project:\n  user: \"只看 {project_title}\"\n")
		store := NewPromptStore(path)

		assert.Equal(t, "只看 {project_title}", store.Get(KindProject).User)
		assert.Contains(t, store.Get(KindPersonal).User, "{inspiration_context}")
	})
}
