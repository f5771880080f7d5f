// Package batch executa operações administrativas item a item, acumulando
// um Result por item em vez de abortar no primeiro erro.
package batch
