package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Env         string `env:"APP_ENV" default:"dev"`

	// Borrowing rules.
	DueDays            int    `env:"BORROW_DUE_DAYS" default:"14"`
	MaxExtensionDays   int    `env:"BORROW_MAX_EXTENSION_DAYS" default:"7"`
	MonthlyRequestCap  int    `env:"BORROW_MONTHLY_REQUEST_CAP" default:"3"`
	MaxBooksPerRequest int    `env:"BORROW_MAX_BOOKS_PER_REQUEST" default:"5"`
	StrictInventory    bool   `env:"BORROW_STRICT_INVENTORY" default:"false"`
	WebhookURL         string `env:"NOTIFY_WEBHOOK_URL"`
}
