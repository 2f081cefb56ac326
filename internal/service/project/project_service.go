package project

import (
	"fmt"
	"log"
	"sync"
	"time"

	"skyline/internal/model"
	pg "skyline/internal/postgres"
	"skyline/internal/util"
)

// ProjectService persists saved filter sets per user in PostgreSQL
type ProjectService struct{}

var (
	projectServiceInstance *ProjectService
	projectServiceOnce     sync.Once
)

// GetProjectService returns the singleton instance of the ProjectService
func GetProjectService() *ProjectService {
	projectServiceOnce.Do(func() {
		projectServiceInstance = &ProjectService{}
	})
	return projectServiceInstance
}

// SaveProject stores a named filter set for the user, creating the user
// record on first save. Saving under an existing name overwrites it.
func (s *ProjectService) SaveProject(username, name, filtersJSON string) (model.Project, error) {
	startTime := time.Now()

	user, err := s.ensureUser(username)
	if err != nil {
		return model.Project{}, err
	}

	var existing model.ProjectPG
	res := pg.DB.Where("user_id = ? AND name = ?", user.ID, name).First(&existing)
	if res.Error == nil {
		existing.Filters = filtersJSON
		if err := pg.DB.Save(&existing).Error; err != nil {
			return model.Project{}, fmt.Errorf("failed to update project: %w", err)
		}
		log.Printf("Updated project %s for user %s in %v", name, username, time.Since(startTime))
		return model.ProjectFromPG(&existing), nil
	}

	proj := model.ProjectPG{
		ID:      util.ShortUUID(),
		UserID:  user.ID,
		Name:    name,
		Filters: filtersJSON,
	}
	if err := pg.DB.Create(&proj).Error; err != nil {
		return model.Project{}, fmt.Errorf("failed to create project: %w", err)
	}

	log.Printf("Saved project %s for user %s in %v", name, username, time.Since(startTime))
	return model.ProjectFromPG(&proj), nil
}

// ListProjects returns the user's saved filter sets, newest first.
// An unknown user yields an empty list, not an error.
func (s *ProjectService) ListProjects(username string) ([]model.Project, error) {
	var user model.UserPG
	if err := pg.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return []model.Project{}, nil
	}

	var rows []model.ProjectPG
	if err := pg.DB.Where("user_id = ?", user.ID).Order("updated_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	projects := make([]model.Project, 0, len(rows))
	for i := range rows {
		projects = append(projects, model.ProjectFromPG(&rows[i]))
	}
	return projects, nil
}

func (s *ProjectService) ensureUser(username string) (*model.UserPG, error) {
	var user model.UserPG
	if err := pg.DB.Where("username = ?", username).First(&user).Error; err == nil {
		return &user, nil
	}

	user = model.UserPG{
		ID:       util.ShortUUID(),
		Username: username,
	}
	if err := pg.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}
