// Пакет predictor реализует модель предсказания цены по спросу и остатку
package predictor

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// обучающая выборка: фиксированные 5 наблюдений (demand, stock) -> price
var (
	sampleDemand = []float64{10, 50, 30, 100, 60}
	sampleStock  = []float64{100, 80, 40, 30, 60}
	samplePrice  = []float64{10, 15, 12, 18, 16}
)

// Predictor хранит коэффициенты обученной линейной регрессии
// price = intercept + demandCoef*demand + stockCoef*stock
// Модель обучается один раз при создании и далее неизменяема,
// поэтому безопасна для одновременного использования без блокировок
type Predictor struct {
	intercept  float64
	demandCoef float64
	stockCoef  float64
}

// New обучает модель методом наименьших квадратов на фиксированной выборке:
// 1. Собирает матрицу признаков со столбцом единиц для свободного члена
// 2. Решает переопределенную систему через mat.Dense.Solve (QR-разложение)
// 3. Возвращает Predictor с полученными коэффициентами
func New() (*Predictor, error) {
	n := len(samplePrice)
	x := mat.NewDense(n, 3, nil)
	y := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		x.Set(i, 1, sampleDemand[i])
		x.Set(i, 2, sampleStock[i])
		y.Set(i, 0, samplePrice[i])
	}
	var beta mat.Dense
	if err := beta.Solve(x, y); err != nil {
		return nil, fmt.Errorf("failed to fit price model: %w", err)
	}
	return &Predictor{
		intercept:  beta.At(0, 0),
		demandCoef: beta.At(1, 0),
		stockCoef:  beta.At(2, 0),
	}, nil
}

// Predict возвращает точечное предсказание цены для пары (demand, stock)
// Результат не округляется и не ограничивается диапазоном допустимых цен
func (p *Predictor) Predict(demand, stock float64) float64 {
	return p.intercept + p.demandCoef*demand + p.stockCoef*stock
}

// Coefficients возвращает обученные коэффициенты модели для логирования и воспроизводимости
func (p *Predictor) Coefficients() (intercept, demand, stock float64) {
	return p.intercept, p.demandCoef, p.stockCoef
}
