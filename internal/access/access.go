// Package access описывает права пользователей в виде предикатов.
// Обработчики и сервисы проверяют права только через эти функции.
package access

import "github.com/magabrotheeeer/course-marketplace/internal/models"

// Principal описывает аутентифицированного пользователя, извлечённого из JWT.
// Для анонимного запроса используется nil.
type Principal struct {
	UserUID   string
	Username  string
	Role      string
	IsTeacher bool
}

// Predicate проверяет одну возможность пользователя.
type Predicate func(p *Principal) bool

func isStaff(p *Principal) bool {
	return p != nil && (p.Role == models.RoleStaff || p.Role == models.RoleAdmin)
}

func isAdmin(p *Principal) bool {
	return p != nil && p.Role == models.RoleAdmin
}

// Authenticated разрешает любой аутентифицированный запрос.
func Authenticated(p *Principal) bool {
	return p != nil && p.UserUID != ""
}

// CanReadCourse разрешает чтение каталога всем, в том числе анонимам.
func CanReadCourse(_ *Principal) bool {
	return true
}

// CanWriteCourse разрешает создавать, изменять и удалять курсы.
func CanWriteCourse(p *Principal) bool {
	return isStaff(p)
}

// CanManageLesson: уроками управляют преподаватели и администраторы.
func CanManageLesson(p *Principal) bool {
	return p != nil && (p.IsTeacher || isAdmin(p))
}

// CanManageGroup: группами управляет только администратор.
func CanManageGroup(p *Principal) bool {
	return isAdmin(p)
}

// CanAdministerBalance разрешает ручную установку баланса.
func CanAdministerBalance(p *Principal) bool {
	return isStaff(p)
}

// CanAdministerUsers разрешает просмотр пользователей и смену их ролей.
func CanAdministerUsers(p *Principal) bool {
	return isAdmin(p)
}

// CanAuthorCourse проверяет, что автор курса преподаватель.
func CanAuthorCourse(u *models.User) bool {
	return u != nil && u.IsTeacher
}
