package postgres

import (
	"context"
	"fmt"
)

// HasDefectClassification informa si la tabla de movimientos tiene la columna defeito_reclamado_id.
// Se consulta una sola vez al arrancar.
func HasDefectClassification(ctx context.Context, q Querier) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.columns
			 WHERE table_schema = current_schema()
			   AND table_name   = 'movimentacoes'
			   AND column_name  = 'defeito_reclamado_id'
		)`
	var ok bool
	if err := q.QueryRow(ctx, query).Scan(&ok); err != nil {
		return false, fmt.Errorf("probe movement schema: %w", err)
	}
	return ok, nil
}
