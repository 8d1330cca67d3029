package services

import (
	portsrepo "github.com/jangbu-app/jangbu_backend/internal/core/ports/repositories"
	portssvc "github.com/jangbu-app/jangbu_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.AccountRepo, repos.JournalRepo)

	return container
}
