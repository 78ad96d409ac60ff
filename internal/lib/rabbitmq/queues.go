package rabbitmq

const prefetchCount = 10

// Топология почтовых уведомлений.
const (
	MailExchange            = "mail"
	PasswordResetRoutingKey = "password_reset"
	PasswordResetQueue      = "mail.password_reset"
)

// QueueConfig описывает очередь и ключ маршрутизации для привязки к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// MailQueues возвращает очереди, которые обслуживает mailer.
func MailQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: PasswordResetQueue, RoutingKey: PasswordResetRoutingKey},
	}
}
