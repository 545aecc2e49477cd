// Пакет events предоставляет обёртку для публикации событий позиций меню в NATS
package events

// Conn определяет минимальный интерфейс NATS-подключения
// Любая реализация Conn (например *nats.Conn) должна предоставлять метод Publish
// subject — тема, data — байтовый массив сообщения
type Conn interface {
	Publish(subject string, data []byte) error
}

// NATSClient хранит Conn и тему subject для публикации событий
type NATSClient struct {
	conn    Conn
	subject string
}

// NewClient создаёт новый NATSClient, связывая Conn и subject
func NewClient(conn Conn, subject string) *NATSClient {
	return &NATSClient{conn: conn, subject: subject}
}

// PublishEvent отправляет сериализованное событие в заданный subject в NATS
// Возвращает ошибку, если публикация не удалась
func (n *NATSClient) PublishEvent(data []byte) error {
	return n.conn.Publish(n.subject, data)
}
