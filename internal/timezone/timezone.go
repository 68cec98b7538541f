// Package timezone переводит календарные даты и локальное время в UTC и обратно.
package timezone

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/samber/mo"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (civil.Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", model.ErrInvalidInput, s)
	}
	return civil.DateOf(t), nil
}

// ParseClock разбирает время суток в 24-часовом формате HH:MM
func ParseClock(s string) (civil.Time, error) {
	t, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return civil.Time{}, fmt.Errorf("%w: time %q must be HH:MM", model.ErrInvalidInput, s)
	}
	return civil.Time{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// FormatDate возвращает дату в формате YYYY-MM-DD
func FormatDate(d civil.Date) string {
	return d.String()
}

// FormatClock возвращает время в формате HH:MM
func FormatClock(t civil.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// LoadZone загружает IANA-зону. "Local" и пустая строка не принимаются:
// сохранять можно только явное имя зоны.
func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: timezone %q is not an IANA zone", model.ErrInvalidInput, name)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", model.ErrInvalidInput, name)
	}
	return loc, nil
}

// ToUTC переводит дату и локальное время в зоне loc в момент UTC.
// Несуществующее время (переход на летнее время) нормализуется как в time.Date.
func ToUTC(d civil.Date, clock civil.Time, loc *time.Location) time.Time {
	return civil.DateTime{Date: d, Time: clock}.In(loc).UTC()
}

// ToLocal переводит момент времени в дату и время суток зоны loc
func ToLocal(t time.Time, loc *time.Location) civil.DateTime {
	return civil.DateTimeOf(t.In(loc))
}

// Resolve выбирает зону заявки: зона пользователя, если она сохранена,
// иначе системная fallback. Если и её нет, используется UTC, и это видно
// по Source результата.
func Resolve(userZone mo.Option[string], fallback string) (model.ResolvedTimezone, *time.Location, error) {
	if name, ok := userZone.Get(); ok && strings.TrimSpace(name) != "" {
		loc, err := LoadZone(name)
		if err != nil {
			return model.ResolvedTimezone{}, nil, err
		}
		return model.ResolvedTimezone{Name: loc.String(), Source: model.TimezoneFromUser}, loc, nil
	}

	if strings.TrimSpace(fallback) != "" {
		loc, err := LoadZone(fallback)
		if err != nil {
			return model.ResolvedTimezone{}, nil, err
		}
		return model.ResolvedTimezone{Name: loc.String(), Source: model.TimezoneFromSystem}, loc, nil
	}

	return model.ResolvedTimezone{Name: "UTC", Source: model.TimezoneDefaultUTC}, time.UTC, nil
}

// SystemZoneName определяет IANA-имя локальной зоны процесса.
// Возвращает пустую строку, если имя определить нельзя.
func SystemZoneName() string {
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" && tz != "Local" {
		return tz
	}

	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}

	// /etc/localtime обычно ссылка на .../zoneinfo/Area/City
	target, err := filepath.EvalSymlinks("/etc/localtime")
	if err != nil {
		return ""
	}
	if i := strings.Index(target, "zoneinfo/"); i >= 0 {
		return target[i+len("zoneinfo/"):]
	}
	return ""
}
