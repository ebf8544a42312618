package services

import (
	"log/slog"

	"github.com/spamms1985-sudo/gpa-lernapp/internal/cache"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/contentbank"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/events"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/repositories"
	"github.com/spamms1985-sudo/gpa-lernapp/internal/session"
)

// ServiceManager bundles all services behind one dependency for the handlers.
type ServiceManager interface {
	Mastery() MasteryService
	Selector() SelectorService
	Grading() GradingService
	Attempt() AttemptService
	Session() SessionService
	Analytics() AnalyticsService
	Export() ExportService
}

type serviceManager struct {
	mastery   MasteryService
	selector  SelectorService
	grading   GradingService
	attempt   AttemptService
	session   SessionService
	analytics AnalyticsService
	export    ExportService
}

// NewServiceManager wires the full service graph. A nil rng lets the selector
// seed its own source.
func NewServiceManager(
	repo repositories.Repository,
	bank *contentbank.Bank,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	rng Rand,
	logger *slog.Logger,
) ServiceManager {
	mastery := NewMasteryService(repo, cacheService, logger)
	selector := NewSelectorService(bank, rng)
	grading := NewGradingService()
	attempt := NewAttemptService(repo, cacheService, publisher, logger)
	sessions := NewSessionService(bank, session.NewStore(cacheService), selector, grading, attempt, repo, publisher, logger)
	analytics := NewAnalyticsService(repo, cacheService, logger)
	export := NewExportService(analytics, logger)

	return &serviceManager{
		mastery:   mastery,
		selector:  selector,
		grading:   grading,
		attempt:   attempt,
		session:   sessions,
		analytics: analytics,
		export:    export,
	}
}

func (m *serviceManager) Mastery() MasteryService     { return m.mastery }
func (m *serviceManager) Selector() SelectorService   { return m.selector }
func (m *serviceManager) Grading() GradingService     { return m.grading }
func (m *serviceManager) Attempt() AttemptService     { return m.attempt }
func (m *serviceManager) Session() SessionService     { return m.session }
func (m *serviceManager) Analytics() AnalyticsService { return m.analytics }
func (m *serviceManager) Export() ExportService       { return m.export }
