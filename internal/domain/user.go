package domain

// User is a provisioned account. Users are fixed at startup and never
// created or removed while the service runs.
type User struct {
	ID       int64  `yaml:"id"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}
