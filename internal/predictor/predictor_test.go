package predictor

import (
	"math"
	"testing"
)

// TestNew_Coefficients проверяет, что обученные коэффициенты совпадают
// с аналитическим решением нормальных уравнений для фиксированной выборки
func TestNew_Coefficients(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	intercept, demand, stock := p.Coefficients()
	// точное решение: intercept = 14.2 - 229518/38990, demand = 3891/38990, stock = 564/38990
	wantIntercept := 14.2 - 229518.0/38990.0
	wantDemand := 3891.0 / 38990.0
	wantStock := 564.0 / 38990.0
	if math.Abs(intercept-wantIntercept) > 1e-9 {
		t.Errorf("intercept = %v, want %v", intercept, wantIntercept)
	}
	if math.Abs(demand-wantDemand) > 1e-9 {
		t.Errorf("demand coef = %v, want %v", demand, wantDemand)
	}
	if math.Abs(stock-wantStock) > 1e-9 {
		t.Errorf("stock coef = %v, want %v", stock, wantStock)
	}
}

// TestPredict проверяет детерминированность предсказания для (60, 60)
func TestPredict(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := p.Predict(60, 60)
	// точное значение: 14.2 + 37782/38990 ~= 15.1690177
	want := 14.2 + 37782.0/38990.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Predict(60, 60) = %v, want %v", got, want)
	}
	// повторный вызов возвращает тот же результат
	if again := p.Predict(60, 60); again != got {
		t.Errorf("Predict не детерминирован: %v != %v", again, got)
	}
}

// TestPredict_NotClamped проверяет, что предсказание не ограничивается снизу нулем
func TestPredict_NotClamped(t *testing.T) {
	p, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// при сильно отрицательном спросе получается отрицательная цена, модель её не обрезает
	if got := p.Predict(-1000, 0); got >= 0 {
		t.Errorf("ожидали отрицательное предсказание, получили %v", got)
	}
}
