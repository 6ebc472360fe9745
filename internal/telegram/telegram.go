package telegram

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	// SendMessageToDefaultChannel posts a MarkdownV2 message to the configured channel.
	SendMessageToDefaultChannel(msg string) error

	// SendPhotoToDefaultChannel uploads a local photo with a MarkdownV2 caption.
	SendPhotoToDefaultChannel(path string, caption string) error
}
