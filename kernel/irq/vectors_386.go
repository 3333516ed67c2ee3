package irq

import "unsafe"

// Each of these is a label in vectors_386.s; none has a Go body. Declaring
// them lets Init resolve their entry addresses to populate the IDT, the same
// body-less-function-backed-by-assembly idiom used throughout package cpu.
func vector0()
func vector1()
func vector2()
func vector3()
func vector4()
func vector5()
func vector6()
func vector7()
func vector8()
func vector9()
func vector10()
func vector11()
func vector12()
func vector13()
func vector14()
func vector15()
func vector16()
func vector17()
func vector18()
func vector19()
func vector20()
func vector21()
func vector22()
func vector23()
func vector24()
func vector25()
func vector26()
func vector27()
func vector28()
func vector29()
func vector30()
func vector31()
func vector32()
func vector33()
func vector34()
func vector35()
func vector36()
func vector37()
func vector38()
func vector39()
func vector40()
func vector41()
func vector42()
func vector43()
func vector44()
func vector45()
func vector46()
func vector47()

func init() {
	stubs := [vectorCount]func(){
		vector0, vector1, vector2, vector3, vector4, vector5, vector6, vector7,
		vector8, vector9, vector10, vector11, vector12, vector13, vector14, vector15,
		vector16, vector17, vector18, vector19, vector20, vector21, vector22, vector23,
		vector24, vector25, vector26, vector27, vector28, vector29, vector30, vector31,
		vector32, vector33, vector34, vector35, vector36, vector37, vector38, vector39,
		vector40, vector41, vector42, vector43, vector44, vector45, vector46, vector47,
	}
	for i, fn := range stubs {
		vectorStubs[i] = funcAddr(fn)
	}
}

// funcAddr resolves a package-level function value to its code entry
// address. A Go func value for a non-closure function is a pointer to a
// funcval whose first word is the entry PC, which is the detail this relies
// on.
func funcAddr(fn func()) uintptr {
	type funcval struct {
		pc uintptr
	}
	return (*funcval)(*(*unsafe.Pointer)(unsafe.Pointer(&fn))).pc
}
