package domain

type Customer struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

type CustomerRepository interface {
	CreateCustomer(customer *Customer) (*Customer, error)
	GetCustomerByID(id int64) (*Customer, error)
	GetCustomerByEmail(email string) (*Customer, error)
	UpdateCustomer(customer *Customer) (*Customer, error)
	DeleteCustomer(id int64) error
	ListCustomers() ([]Customer, error)
	SearchCustomers(query string) ([]Customer, error)
}

type CustomerUseCase interface {
	AddCustomer(customer *Customer) (*Customer, error)
	GetCustomer(id int64) (*Customer, error)
	UpdateCustomer(customer *Customer) (*Customer, error)
	DeleteCustomer(id int64) error
	ListCustomers() ([]Customer, error)
	SearchCustomers(query string) ([]Customer, error)
}
