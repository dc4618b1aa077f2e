package models

// All lists every model for migrations.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&User{},
		&Salon{},
		&Category{},
		&Customer{},
		&Service{},
		&Product{},
		&Employee{},
		&Chair{},
		&Booking{},
		&Media{},
		&SupportTicket{},
		&ReminderTemplate{},
		&ReminderLog{},
	}
}
