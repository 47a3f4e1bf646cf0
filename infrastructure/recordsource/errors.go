package recordsource

import (
	"errors"

	"github.com/lib/pq"
)

// ErrorClass distingue as falhas do record source que o engine sabe
// contornar. A lógica de degradação de esquema e de paginação depende
// inteiramente desta distinção.
type ErrorClass int

const (
	// ClassOther é qualquer falha fora da taxonomia conhecida.
	ClassOther ErrorClass = iota
	// ClassMissingColumn indica uma coluna inexistente neste deployment.
	ClassMissingColumn
	// ClassMissingRelation indica tabela/relação inexistente.
	ClassMissingRelation
	// ClassPermissionDenied indica falta de permissão na relação.
	ClassPermissionDenied
)

// Códigos de erro do PostgreSQL usados na classificação.
const (
	pqUndefinedColumn       = "42703"
	pqUndefinedTable        = "42P01"
	pqInsufficientPrivilege = "42501"
)

// Classify mapeia um erro do record source para a taxonomia do engine.
func Classify(err error) ErrorClass {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return ClassOther
	}

	switch string(pqErr.Code) {
	case pqUndefinedColumn:
		return ClassMissingColumn
	case pqUndefinedTable:
		return ClassMissingRelation
	case pqInsufficientPrivilege:
		return ClassPermissionDenied
	}

	return ClassOther
}

// IsMissingColumn informa se o erro é da classe "coluna inexistente".
func IsMissingColumn(err error) bool {
	return Classify(err) == ClassMissingColumn
}

// IsSourceUnavailable informa se o erro é da classe "fonte indisponível"
// (tabela inexistente ou permissão negada). Consumidores devem tratar
// como "zero resultados", nunca como erro fatal.
func IsSourceUnavailable(err error) bool {
	class := Classify(err)
	return class == ClassMissingRelation || class == ClassPermissionDenied
}
