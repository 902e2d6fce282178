package inventario_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/inventario"
)

func TestEsEntradaEsSalida_VocabularioCompleto(t *testing.T) {
	entradas := []string{entity.MovimientoCompra, entity.MovimientoCargo, entity.MovimientoDevolucion}
	salidas := []string{entity.MovimientoVenta, entity.MovimientoDescargo, entity.MovimientoPedido, entity.MovimientoApartado}

	for _, tipo := range entradas {
		assert.True(t, inventario.EsEntrada(tipo), "%s debe ser entrada", tipo)
		assert.False(t, inventario.EsSalida(tipo), "%s no debe ser salida", tipo)
	}
	for _, tipo := range salidas {
		assert.True(t, inventario.EsSalida(tipo), "%s debe ser salida", tipo)
		assert.False(t, inventario.EsEntrada(tipo), "%s no debe ser entrada", tipo)
	}
	// Ajuste y transferencia no son ni entrada ni salida pero sí tipos válidos.
	assert.False(t, inventario.EsEntrada(entity.MovimientoAjuste))
	assert.False(t, inventario.EsSalida(entity.MovimientoAjuste))
	assert.True(t, inventario.TipoValido(entity.MovimientoAjuste))
	assert.True(t, inventario.TipoValido(entity.MovimientoTransferencia))
	assert.False(t, inventario.TipoValido("prestamo"))
}

func TestNuevoSaldo_EntradaYSalida(t *testing.T) {
	saldo, err := inventario.NuevoSaldo(10, 5, entity.MovimientoCompra)
	require.NoError(t, err)
	assert.Equal(t, 15, saldo)

	saldo, err = inventario.NuevoSaldo(10, 4, entity.MovimientoVenta)
	require.NoError(t, err)
	assert.Equal(t, 6, saldo)
}

// El ajuste fija la existencia en un valor absoluto: no suma ni resta.
func TestNuevoSaldo_AjusteEsAbsoluto(t *testing.T) {
	saldo, err := inventario.NuevoSaldo(10, 3, entity.MovimientoAjuste)
	require.NoError(t, err)
	assert.Equal(t, 3, saldo, "ajuste a 3 sobre saldo 10 debe dejar 3, no 13")

	saldo, err = inventario.NuevoSaldo(2, 50, entity.MovimientoAjuste)
	require.NoError(t, err)
	assert.Equal(t, 50, saldo)
}

// La transferencia desplaza con la cantidad firmada por el caller: negativa en
// el origen, positiva en el destino.
func TestNuevoSaldo_TransferenciaFirmada(t *testing.T) {
	origen, err := inventario.NuevoSaldo(10, -4, entity.MovimientoTransferencia)
	require.NoError(t, err)
	assert.Equal(t, 6, origen)

	destino, err := inventario.NuevoSaldo(1, 4, entity.MovimientoTransferencia)
	require.NoError(t, err)
	assert.Equal(t, 5, destino)
}

func TestNuevoSaldo_TipoDesconocido(t *testing.T) {
	_, err := inventario.NuevoSaldo(10, 5, "prestamo")
	assert.Error(t, err)
}

func TestCantidadFirmada(t *testing.T) {
	assert.Equal(t, 5, inventario.CantidadFirmada(entity.MovimientoCompra, 5))
	assert.Equal(t, -5, inventario.CantidadFirmada(entity.MovimientoVenta, 5))
	assert.Equal(t, 7, inventario.CantidadFirmada(entity.MovimientoAjuste, 7))
	assert.Equal(t, -3, inventario.CantidadFirmada(entity.MovimientoTransferencia, -3))
}

func TestValidarStockSuficiente(t *testing.T) {
	ok, _ := inventario.ValidarStockSuficiente(10, 10)
	assert.True(t, ok, "consumir exactamente la existencia debe ser válido")

	ok, motivo := inventario.ValidarStockSuficiente(3, 5)
	assert.False(t, ok)
	assert.Contains(t, motivo, "stock insuficiente")

	ok, _ = inventario.ValidarStockSuficiente(10, 0)
	assert.False(t, ok, "cantidad cero no es una salida válida")

	ok, _ = inventario.ValidarStockSuficiente(10, -2)
	assert.False(t, ok)
}
