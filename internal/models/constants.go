package models

// Роли аккаунтов
const (
	RoleAdmin = "admin"
)

// AvailabilityStatus константы статуса доступности
const (
	AvailabilityAvailable   = "available"
	AvailabilityBusy        = "busy"
	AvailabilityUnavailable = "unavailable"
)

// MessageStatus константы статусов входящих сообщений
const (
	MessageStatusUnread   = "unread"
	MessageStatusRead     = "read"
	MessageStatusReplied  = "replied"
	MessageStatusArchived = "archived"
)

// MessagePriority константы приоритетов сообщений
const (
	MessagePriorityLow    = "low"
	MessagePriorityMedium = "medium"
	MessagePriorityHigh   = "high"
)

// DefaultSocialIcon иконка соцсети, если клиент её не указал
const DefaultSocialIcon = "Globe"

// ValidAvailabilityStatuses список валидных статусов доступности
var ValidAvailabilityStatuses = map[string]struct{}{
	AvailabilityAvailable:   {},
	AvailabilityBusy:        {},
	AvailabilityUnavailable: {},
}

// ValidMessageStatuses список валидных статусов сообщений
var ValidMessageStatuses = map[string]struct{}{
	MessageStatusUnread:   {},
	MessageStatusRead:     {},
	MessageStatusReplied:  {},
	MessageStatusArchived: {},
}

// ValidMessagePriorities список валидных приоритетов сообщений
var ValidMessagePriorities = map[string]struct{}{
	MessagePriorityLow:    {},
	MessagePriorityMedium: {},
	MessagePriorityHigh:   {},
}
