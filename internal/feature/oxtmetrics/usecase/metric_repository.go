// Package usecase はOXTメトリクスの取り込みと検索のビジネスロジックを実装します。
package usecase

import (
	"context"

	"analyst_app/internal/feature/oxtmetrics/domain/entity"

	"github.com/google/uuid"
)

// MetricRepository はメトリクスの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MetricRepository interface {
	// Add はメトリクスを1件保存し、保存後の値を返します。
	Add(ctx context.Context, m entity.Metric) (entity.Metric, error)
	// GetByID はIDでメトリクスを取得します。存在しない場合は (nil, nil) を返します。
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Metric, error)
	// GetMetrics はフィルタ条件に一致するメトリクスをタイムスタンプ昇順で返します。
	GetMetrics(ctx context.Context, filter entity.MetricFilter) ([]entity.Metric, error)
}
