package models

import "time"

// Balance — баланс баллов пользователя, один на пользователя.
type Balance struct {
	UserUID     string    `json:"user_uid"`
	Amount      Points    `json:"amount"`
	LastUpdated time.Time `json:"last_updated"`
}

// DummyBalance — тело запроса сотрудника на установку баланса.
type DummyBalance struct {
	Amount *Points `json:"amount" validate:"required"`
}
