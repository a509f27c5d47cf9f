package usecase

import (
	"context"
	"encoding/json"
)

// Pinger は外部APIの疎通確認を抽象化します。
type Pinger interface {
	Ping(ctx context.Context) (json.RawMessage, error)
}

// pingUsecase は外部APIのステータスをそのまま返すユースケースです。
type pingUsecase struct {
	pinger Pinger
}

// NewPingUsecase はpingUsecaseの新しいインスタンスを生成します。
func NewPingUsecase(pinger Pinger) *pingUsecase {
	return &pingUsecase{pinger: pinger}
}

// Ping は外部APIの疎通確認レスポンスを加工せずに返します。
func (pu *pingUsecase) Ping(ctx context.Context) (json.RawMessage, error) {
	return pu.pinger.Ping(ctx)
}
