package models

// All lists every table managed by AutoMigrate, parents first.
func All() []any {
	return []any{
		&User{},
		&SalonSettings{},
		&Client{},
		&Service{},
		&Appointment{},
		&AppointmentItem{},
		&Payment{},
		&AuditLog{},
	}
}
