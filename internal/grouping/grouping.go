// Package grouping выбирает группу для нового студента.
package grouping

import "github.com/magabrotheeeer/course-marketplace/internal/models"

// LeastLoaded возвращает группу с наименьшим числом участников.
// При равенстве выбирается группа с меньшим ID, порядок входного среза не важен.
func LeastLoaded(loads []models.GroupLoad) (models.GroupLoad, error) {
	if len(loads) == 0 {
		return models.GroupLoad{}, models.ErrNoGroupsAvailable
	}
	best := loads[0]
	for _, l := range loads[1:] {
		if l.Members < best.Members || (l.Members == best.Members && l.ID < best.ID) {
			best = l
		}
	}
	return best, nil
}
