package cpu

// Accessors used by the tick loop, debug tooling and tests. The
// register pairs are also exported fields of CPU; SetAF is the path
// that masks the low nibble of F.

func (c *CPU) GetPC() uint16 { return c.PC.Get() }
func (c *CPU) SetPC(v uint16) { c.PC.Set(v) }
func (c *CPU) GetSP() uint16 { return c.SP.Get() }
func (c *CPU) SetSP(v uint16) { c.SP.Set(v) }

func (c *CPU) GetAF() uint16 { return c.AF.Get() }
func (c *CPU) GetBC() uint16 { return c.BC.Get() }
func (c *CPU) GetDE() uint16 { return c.DE.Get() }
func (c *CPU) GetHL() uint16 { return c.HL.Get() }

func (c *CPU) SetAF(v uint16) { c.AF.Set(v & 0xFFF0) }
func (c *CPU) SetBC(v uint16) { c.BC.Set(v) }
func (c *CPU) SetDE(v uint16) { c.DE.Set(v) }
func (c *CPU) SetHL(v uint16) { c.HL.Set(v) }

func (c *CPU) GetA() uint8 { return c.AF.Hi() }
func (c *CPU) SetA(v uint8) { c.AF.SetHi(v) }
func (c *CPU) GetF() uint8 { return c.f() }
