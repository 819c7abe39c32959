package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shenikar/border_alert_system/internal/models"
)

const updateIDPrefix = "up"

// AppendUpdate возвращает копию инцидента с новой записью в конце журнала обновлений.
// Непустой status заменяет текущий статус инцидента без проверки допустимости перехода.
// Исходное значение incident не изменяется.
func AppendUpdate(incident models.Incident, content, updatedBy string, status models.IncidentStatus, at time.Time) (models.Incident, error) {
	if strings.TrimSpace(content) == "" {
		return models.Incident{}, ErrEmptyContent
	}
	if status != "" && !status.Valid() {
		return models.Incident{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	out := incident.Clone()
	out.Updates = append(out.Updates, models.IncidentUpdate{
		ID:        nextUpdateID(incident.Updates),
		Content:   content,
		Status:    status,
		Timestamp: at,
		UpdatedBy: updatedBy,
	})
	if status != "" {
		out.Status = status
	}
	return out, nil
}

// nextUpdateID выдает up<n>, где n больше любого уже использованного номера
func nextUpdateID(updates []models.IncidentUpdate) string {
	next := len(updates) + 1
	for _, u := range updates {
		n, err := strconv.Atoi(strings.TrimPrefix(u.ID, updateIDPrefix))
		if err != nil || !strings.HasPrefix(u.ID, updateIDPrefix) {
			continue
		}
		if n >= next {
			next = n + 1
		}
	}
	return updateIDPrefix + strconv.Itoa(next)
}
