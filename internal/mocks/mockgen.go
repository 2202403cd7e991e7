//go:build gomock || generate

package mocks

//go:generate sh -c "go run go.uber.org/mock/mockgen -package mocks -destination sink.go github.com/quic-rl/qtx DatagramSink"
