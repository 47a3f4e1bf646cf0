package reporting

import (
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Janssemsan72/Suamusicafacil-sub000/internal/domain"
)

// defaultManualOverrides corrige pedidos cujo timestamp armazenado caiu
// no dia errado do fuso de negócio (pagamentos confirmados perto da
// virada de meia-noite). Mantida curta de propósito: cada entrada foi
// conferida manualmente contra o extrato do gateway.
var defaultManualOverrides = []domain.ManualOverride{
	{OrderID: "ord_7kQmP2xHt4", BusinessDate: "2024-11-30"},
	{OrderID: "ord_Jw9zR5cLn1", BusinessDate: "2024-12-24"},
	{OrderID: "ord_T3vXb8sKd6", BusinessDate: "2025-01-01"},
}

// LoadOverrides devolve a tabela de correções manuais. Quando um arquivo
// é configurado, ele substitui a lista embutida por inteiro; falha de
// leitura mantém a lista embutida.
func LoadOverrides(path string) []domain.ManualOverride {
	if path == "" {
		return defaultManualOverrides
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Warn("Não foi possível ler o arquivo de overrides manuais, usando a lista embutida")
		return defaultManualOverrides
	}

	var overrides []domain.ManualOverride
	if err := json.Unmarshal(raw, &overrides); err != nil {
		logrus.WithError(err).WithField("path", path).Warn("Arquivo de overrides manuais inválido, usando a lista embutida")
		return defaultManualOverrides
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"entries": len(overrides),
	}).Info("Overrides manuais carregados do arquivo")

	return overrides
}
