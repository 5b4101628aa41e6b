package account

// Config holds credential policy settings.
type Config struct {
	BcryptCost        int `env:"BCRYPT_COST" envDefault:"10"`
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH" envDefault:"8"`
}
