package dto

import (
	"strconv"
	"strings"

	"github.com/jhoicas/stocks-api/internal/domain/repository"
)

// Campos ordenables por colección. Un ordering fuera de la lista blanca se
// ignora y se cae al orden por defecto (created_at descendente).
var (
	productOrderFields = map[string]bool{"created_at": true, "title": true}
	stockOrderFields   = map[string]bool{"created_at": true, "address": true}
)

// ParseIDList parsea una lista de ids separados por coma. Los tokens que no
// son enteros positivos se descartan en silencio; una lista sin tokens
// válidos devuelve nil (el filtro resultante es un no-op).
func ParseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}
	var ids []int64
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// parseOrdering resuelve el parámetro ordering contra la lista blanca.
// Sintaxis al estilo "campo" ascendente, "-campo" descendente.
func parseOrdering(raw string, allowed map[string]bool) (orderBy string, desc bool) {
	orderBy, desc = "created_at", true
	field := strings.TrimSpace(raw)
	if field == "" {
		return orderBy, desc
	}
	reversed := strings.HasPrefix(field, "-")
	field = strings.TrimPrefix(field, "-")
	if !allowed[field] {
		return orderBy, desc
	}
	return field, reversed
}

// Filter traduce los parámetros de consulta a un filtro del repositorio.
func (q ProductListQuery) Filter() repository.ProductFilter {
	q.DefaultPage()
	orderBy, desc := parseOrdering(q.Ordering, productOrderFields)
	return repository.ProductFilter{
		Title:       q.Title,
		Description: q.Description,
		Search:      q.Search,
		OrderBy:     orderBy,
		Desc:        desc,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
}

// Filter traduce los parámetros de consulta a un filtro del repositorio.
func (q StockListQuery) Filter() repository.StockFilter {
	q.DefaultPage()
	orderBy, desc := parseOrdering(q.Ordering, stockOrderFields)
	return repository.StockFilter{
		Address:    q.Address,
		Search:     q.Search,
		ProductIDs: ParseIDList(q.Products),
		OrderBy:    orderBy,
		Desc:       desc,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
}
