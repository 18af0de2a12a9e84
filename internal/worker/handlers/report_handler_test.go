package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"deptsync/internal/event"
	"deptsync/internal/llmreport"
)

func TestTimelineEventType(t *testing.T) {
	t.Run("周报类报告写周报事件", func(t *testing.T) {
		assert.Equal(t, event.TypeWeeklyReport, timelineEventType(llmreport.KindProjectWeekly))
		assert.Equal(t, event.TypeWeeklyReport, timelineEventType(llmreport.KindPersonal))
	})

	t.Run("其余报告写月报事件", func(t *testing.T) {
		assert.Equal(t, event.TypeMonthlyReport, timelineEventType(llmreport.KindDeptMonthly))
		assert.Equal(t, event.TypeMonthlyReport, timelineEventType(llmreport.KindProject))
	})
}
